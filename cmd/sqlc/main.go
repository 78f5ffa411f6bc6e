// sqlc regenerates the query packages: it runs `sqlc generate` once per queries.sql matched by
// .sqlc.base.yaml, writing the code next to the queries file in a package named after its directory.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const defaultConfigName = "sqlc.yaml"

var (
	baseName = flag.String("base", ".sqlc.base", "Base config name (yaml, without extension)")
	dryRun   = flag.Bool("n", false, "Print the generated configs instead of calling sqlc")
)

func generateConfig(engine *viper.Viper, version, file string) ([]byte, error) {
	dir, _ := filepath.Split(file)
	parts := strings.Split(filepath.Clean(dir), string(os.PathSeparator))
	if len(parts) == 0 || parts[len(parts)-1] == "." {
		return nil, errors.Errorf("queries file %s has no package directory", file)
	}

	engine.Set("gen.go.package", parts[len(parts)-1])
	engine.Set("gen.go.out", dir)
	engine.Set("queries", file)

	settings := engine.AllSettings()
	delete(settings, "source")

	bs, err := yaml.Marshal(map[string]interface{}{
		"version": version,
		"sql":     []interface{}{settings},
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal config to yaml")
	}
	return bs, nil
}

func callSqlc(content []byte) error {
	_ = os.Remove(defaultConfigName)
	if err := os.WriteFile(defaultConfigName, content, 0o644); err != nil {
		return errors.Wrap(err, "write sqlc.yaml file")
	}
	defer os.Remove(defaultConfigName)

	cmd := exec.Command("sqlc", "generate", "--file", defaultConfigName)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "call sqlc: %s", string(output))
	}
	return nil
}

func queryFiles(patterns []string) ([]string, error) {
	files := make([]string, 0)
	for _, pattern := range patterns {
		f, err := filepath.Glob(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "glob %s", pattern)
		}
		files = append(files, f...)
	}
	return files, nil
}

func main() {
	flag.Parse()

	viper.SetConfigName(*baseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
	srcConfigValue := viper.GetStringSlice("sql.0.source")
	if len(srcConfigValue) == 0 {
		panic("has no sql.0.source in config")
	}
	files, err := queryFiles(srcConfigValue)
	if err != nil {
		panic(err)
	}

	engine := viper.Sub("sql.0")
	engine.Set("schema", viper.GetString("sql.0.schema"))

	for _, file := range files {
		content, gErr := generateConfig(engine, viper.GetString("version"), file)
		if gErr != nil {
			panic(fmt.Errorf("can't generate result config: %w", gErr))
		}
		if *dryRun {
			fmt.Printf("# %s\n%s\n", file, content)
			continue
		}
		if cErr := callSqlc(content); cErr != nil {
			panic(fmt.Errorf("call sqlc: %w", cErr))
		}
		fmt.Printf("%s file complete\n", file)
	}
	fmt.Println("done")
}
