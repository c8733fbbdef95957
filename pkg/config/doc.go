/*
Package config loads the settings of a tsfix run.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   HCL    | |   JSON   |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

The parser is picked by file extension. Unset fields are filled by
ApplyDefaults: the current directory as root, build and dependency
directories excluded, TypeScript test and spec files included, an
underscore prefix, one job and the built-in rule set.

🔍 Example (.tsfix.yaml):

	root: ./packages
	exclude_dirs: [node_modules, dist]
	jobs: 4
	rules:
	  - kind: strip-pattern
	    pattern: 'import\s+.*Glyph.*from.*;\n'
	  - kind: rename-if-flagged
	    pattern: 'const\s+(\w+)\s*='
	    trigger: is assigned a value but never used

A relative root in a config file is resolved against the directory holding
the file. Roots given on the command line stay relative to the working
directory.

A rules list replaces the built-in rules entirely; it is not merged.
*/
package config
