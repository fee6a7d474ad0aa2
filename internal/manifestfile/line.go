package manifestfile

import (
	"fmt"
	"regexp"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// extractLine pulls the "line N" a yaml.v3 decode error reports, if any,
// matching the teacher's own config parser's approach to surfacing
// useful ParseError line numbers.
func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}

	return line
}
