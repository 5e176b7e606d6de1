package main

import (
	"os"
	"strconv"
	"strings"

	"kaiser-cli/internal/cli"
)

// isCardRef reports whether s looks like a card number ("12" or "#12").
func isCardRef(s string) bool {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}

// rewriteDirectCardLookupArgs turns `kaiser 12` into `kaiser cards show 12`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before parsing.
// Persistent flags may come first, so the first positional token is located rather than argv[1].
func rewriteDirectCardLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	// Unknown flags are skipped without consuming a value so a card number is never swallowed.
	valueFlags := map[string]bool{
		"--board":     true,
		"--backend":   true,
		"--dsn":       true,
		"--namespace": true,
		"--user":      true,
		"--format":    true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
		"--quiet":  true,
		"-q":       true,
	}

	insert := func(at int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:at]...)
		out = append(out, "cards", "show")
		return append(out, argv[at:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isCardRef(argv[i+1]) {
				return insert(i + 1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		if isCardRef(a) {
			return insert(i)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectCardLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
