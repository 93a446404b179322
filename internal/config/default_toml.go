package config

// DefaultConfigTOML is the annotated configuration written by
// `cflow init`. Every setting is commented out and shows its default.
const DefaultConfigTOML = `# cflow configuration file
# Settings are commented out with their default values.

[input]
# Glob patterns selecting source files when a directory is analyzed.
# include_patterns = ["**/*.src"]

# Glob patterns filtering out discovered files.
# exclude_patterns = []

[output]
# Report format: text, json, yaml, or dot.
# format = "text"

# Directory for report files. Empty writes to stdout.
# directory = ""

# Mark unreachable blocks in reports.
# show_unreachable = false

[complexity]
# Compute cyclomatic complexity per graph.
# enabled = true

# Complexity risk thresholds: low <= low_threshold,
# medium <= medium_threshold, high above that.
# low_threshold = 9
# medium_threshold = 19
`
