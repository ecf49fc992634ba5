package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gnoverse/rangelogic/describe"
)

const defaultConfigurationPath = ".rangelogic.yaml"

// initCmd: rangelogic init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := initConfigurationFile(cfgFile)
		if err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		fmt.Printf("Configuration file created/updated: %s\n", path)
	},
}

func initConfigurationFile(configurationPath string) (string, error) {
	if configurationPath == "" {
		configurationPath = defaultConfigurationPath
	}

	d, err := yaml.Marshal(describe.DefaultConfig())
	if err != nil {
		return "", err
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(d); err != nil {
		return "", err
	}
	return configurationPath, nil
}
