package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) TestDefaults() {
	cfg, err := LoadConfig("")
	s.Require().NoError(err)

	s.Equal(8080, cfg.Server.Port)
	s.Equal("memory", cfg.Storage.Type)
	s.Equal("info", cfg.Log.Level)
	s.Empty(cfg.QuestionBank)
}

func (s *ConfigSuite) TestLoadFromFile() {
	path := filepath.Join(s.T().TempDir(), "config.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(`
server:
  host: 0.0.0.0
  port: 9090
storage:
  type: redis
  redis_url: redis://localhost:6379/0
question_bank: /data/bank.json
log:
  level: debug
`), 0o644))

	cfg, err := LoadConfig(path)
	s.Require().NoError(err)

	s.Equal("0.0.0.0", cfg.Server.Host)
	s.Equal(9090, cfg.Server.Port)
	s.Equal("redis", cfg.Storage.Type)
	s.Equal("redis://localhost:6379/0", cfg.Storage.RedisURL)
	s.Equal("/data/bank.json", cfg.QuestionBank)
	s.Equal("debug", cfg.Log.Level)
}

func (s *ConfigSuite) TestPartialFileKeepsDefaults() {
	path := filepath.Join(s.T().TempDir(), "config.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("server:\n  port: 3000\n"), 0o644))

	cfg, err := LoadConfig(path)
	s.Require().NoError(err)

	s.Equal(3000, cfg.Server.Port)
	s.Equal("memory", cfg.Storage.Type)
	s.Equal("info", cfg.Log.Level)
}

func (s *ConfigSuite) TestEnvironmentOverridesFile() {
	path := filepath.Join(s.T().TempDir(), "config.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("server:\n  port: 3000\n"), 0o644))

	s.T().Setenv("QUIZPARTY_PORT", "4000")
	s.T().Setenv("STORAGE_TYPE", "redis")
	s.T().Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadConfig(path)
	s.Require().NoError(err)

	s.Equal(4000, cfg.Server.Port)
	s.Equal("redis", cfg.Storage.Type)
	s.Equal("warn", cfg.Log.Level)
}

func (s *ConfigSuite) TestMissingFileIsAnError() {
	_, err := LoadConfig("/nonexistent/config.yaml")
	s.Error(err)
}

func (s *ConfigSuite) TestMalformedYAMLIsAnError() {
	path := filepath.Join(s.T().TempDir(), "config.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := LoadConfig(path)
	s.Error(err)
}
