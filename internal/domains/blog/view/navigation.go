package view

import "bloghub-backend/internal/domains/blog/model"

type NavItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Navigation: admin link chỉ hiện khi is_admin
func Navigation(actor model.Actor) []NavItem {
	items := []NavItem{{Key: "home", Label: "Home", Path: "/"}}
	if actor.IsAdmin {
		items = append(items, NavItem{Key: "admin", Label: "Admin", Path: "/admin"})
	}
	return items
}
