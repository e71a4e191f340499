// Package sites manages the site lists fed to the voronoi rasterizer.
//
// It generates random site lists, toggles individual sites the way an
// interactive editor does (clicking near a site removes it, clicking anywhere
// else adds one), and reads and writes site files.
//
// # File Formats
//
// Site files are JSON or TOML, chosen by extension:
//
//	{"sites": [{"x": 12.5, "y": 40}, {"x": 300, "y": 220}]}
//
//	[[sites]]
//	x = 12.5
//	y = 40
//
// Only positions are stored. Colors are assigned at render time.
package sites
