package bootstrap

import "flag"

const defaultConfigPath = "/etc/msgbus/config.yaml"

// cliFlags wraps a flag.FlagSet so Run can be exercised with an explicit
// argument slice instead of the process's os.Args.
type cliFlags struct {
	fs *flag.FlagSet
}

func newFlagSet() *cliFlags {
	return &cliFlags{fs: flag.NewFlagSet("msgbus", flag.ContinueOnError)}
}

// parse extracts the -config and -version flags from args.
func (c *cliFlags) parse(args []string) (configPath string, showVersion bool, err error) {
	configFlag := c.fs.String("config", defaultConfigPath, "path to configuration file")
	versionFlag := c.fs.Bool("version", false, "show version and exit")

	if err := c.fs.Parse(args); err != nil {
		return "", false, err
	}
	return *configFlag, *versionFlag, nil
}
