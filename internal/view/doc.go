// Package view renders the admin HTML pages as templ components. Edit the
// .templ files and run `templ generate` to refresh the _templ.go output.
package view
