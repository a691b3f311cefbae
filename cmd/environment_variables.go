package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

const (
	EnvironmentVariablePrefix = "COVERCORE_"
	fileSuffix                = "_FILE"
)

// SetFlagsFromEnvVariables sets flags from env variables. Each flag can be
// set with an env variable whose name starts with `COVERCORE_`, or read from
// the file named by an env variable with the additional suffix `_FILE`.
func SetFlagsFromEnvVariables(fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		envVar := flagToEnvVarName(f)
		if val, present := os.LookupEnv(envVar); present {
			err = fs.Set(f.Name, val)
			return
		}
		if strings.HasSuffix(envVar, fileSuffix) {
			return
		}
		if path, present := os.LookupEnv(envVar + fileSuffix); present {
			var b []byte
			if b, err = os.ReadFile(path); err != nil {
				err = fmt.Errorf("reading value of flag %s from file: %w", f.Name, err)
				return
			}
			err = fs.Set(f.Name, string(b))
		}
	})
	return err
}

func flagToEnvVarName(f *pflag.Flag) string {
	return fmt.Sprintf("%s%s", EnvironmentVariablePrefix, strings.Replace(strings.ToUpper(f.Name), "-", "_", -1))
}
