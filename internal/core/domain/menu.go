package domain

// NavIcon names the front-end icon component for a menu entry.
type NavIcon struct {
	Name string `json:"name"`
}

// NavBadge is a small label rendered next to a menu entry.
type NavBadge struct {
	Color string `json:"color"`
	Text  string `json:"text"`
}

// NavItem is one node of the side menu returned on login and token refresh.
type NavItem struct {
	Name          string    `json:"name"`
	URL           string    `json:"url,omitempty"`
	Title         bool      `json:"title,omitempty"`
	IconComponent *NavIcon  `json:"iconComponent,omitempty"`
	Badge         *NavBadge `json:"badge,omitempty"`
	Children      []NavItem `json:"children,omitempty"`
}

// MenuFor builds the side menu visible to role. Unknown roles get the plain user menu.
func MenuFor(role Role) []NavItem {
	dashboard := NavItem{
		Name:          "Dashboard",
		URL:           "/dashboard",
		IconComponent: &NavIcon{Name: "cil-speedometer"},
		Badge:         &NavBadge{Color: "info", Text: "NEW"},
	}

	switch role {
	case RoleAdmin:
		return []NavItem{
			dashboard,
			{Name: "Main", Title: true},
			usersMenu(false),
		}
	case RoleSuperAdmin:
		return []NavItem{
			dashboard,
			{Name: "Main", Title: true},
			usersMenu(true),
		}
	default:
		return []NavItem{dashboard}
	}
}

func usersMenu(canCreate bool) NavItem {
	item := NavItem{
		Name:          "Users",
		IconComponent: &NavIcon{Name: "cilUser"},
		Children: []NavItem{
			{Name: "User List", URL: "/admin/users/"},
		},
	}
	if canCreate {
		item.Children = append(item.Children, NavItem{Name: "New User", URL: "/admin/users/new"})
	}
	return item
}
