package model

import (
	"html/template"
)

// Page is one rendered documentation page handed to layouts.
type Page struct {
	ID          string
	Title       string
	Summary     string
	Permalink   string
	Layout      string
	ContentHTML template.HTML
}

// SidebarItem is one rendered sidebar entry; categories have Children
// and no Permalink, document links have a Permalink and no Children.
type SidebarItem struct {
	Label     string
	Permalink string
	Collapsed bool
	Children  []*SidebarItem
}

// Site holds all site-wide data available to every layout.
type Site struct {
	Title       string
	Description string
	BaseURL     string
	Pages       []*Page
	PagesByID   map[string]*Page
	Sidebar     []*SidebarItem
}
