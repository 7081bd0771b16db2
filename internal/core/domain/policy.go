package domain

// CanCreateCommodity reports whether p may list a new commodity. Only
// business accounts can.
func CanCreateCommodity(p Principal) bool {
	return p.Role == RoleBusiness
}

// CanMutateCommodity reports whether p owns c. Role alone is not enough:
// one business may not edit another's commodity.
func CanMutateCommodity(p Principal, c *Commodity) bool {
	return c != nil && p.ID != "" && c.Business.ID == p.ID
}

func CanDeleteCommodity(p Principal, c *Commodity) bool {
	return CanMutateCommodity(p, c)
}
