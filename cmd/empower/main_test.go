package main

import (
	"bytes"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/miruken-go/empower"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type CommandTestSuite struct {
	suite.Suite
}

func (suite *CommandTestSuite) execute(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-prefix", ""}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (suite *CommandTestSuite) TestPatterns() {
	suite.Run("Table", func() {
		out, err := suite.execute("patterns")
		suite.Require().NoError(err)
		suite.Contains(out, "assert.deepEqual(actual, expected, [message])")
		suite.Contains(out, "MemberExpression")
		suite.Contains(out, "assert.notDeepStrictEqual")
	})

	suite.Run("Json", func() {
		out, err := suite.execute("patterns", "--output", "json")
		suite.Require().NoError(err)
		suite.Contains(out, `"pattern":"assert(value, [message])"`)
		suite.Contains(out, `"captures":1`)
		suite.NotContains(out, `"Pattern"`)
		var infos []patternInfo
		suite.Require().NoError(jsoniter.Unmarshal([]byte(out), &infos))
		suite.Len(infos, len(empower.DefaultPatterns))
		suite.Equal("assert", infos[0].Callee)
		suite.Equal("Identifier", infos[0].Kind)
		suite.Equal([]string{"value", "[message]"}, infos[0].Args)
		suite.Equal(1, infos[0].Captures)
	})

	suite.Run("Yaml", func() {
		out, err := suite.execute("patterns", "-o", "yaml",
			"--config", "../../config/koanf/testdata/empower.yaml")
		suite.Require().NoError(err)
		var infos []patternInfo
		suite.Require().NoError(yaml.Unmarshal([]byte(out), &infos))
		suite.Require().Len(infos, 2)
		suite.Equal("t.ok(value, [message])", infos[0].Pattern)
		suite.Equal("ok", infos[0].Callee)
		suite.Equal(2, infos[1].Captures)
	})

	suite.Run("Unknown Output", func() {
		_, err := suite.execute("patterns", "-o", "xml")
		suite.ErrorContains(err, `unknown output "xml"`)
	})

	suite.Run("Unsupported Config", func() {
		_, err := suite.execute("patterns", "--config", "empower.toml")
		suite.Error(err)
	})
}

func (suite *CommandTestSuite) TestCheck() {
	suite.Run("Valid", func() {
		out, err := suite.execute("check", "assert(value)", "assert.equal(a, b, [message])")
		suite.Require().NoError(err)
		suite.Contains(out, "ok   assert(value) (Identifier, captures 1)")
		suite.Contains(out, "ok   assert.equal(a, b, [message]) (MemberExpression, captures 2)")
	})

	suite.Run("Invalid", func() {
		out, err := suite.execute("check", "assert(value)", "assert(")
		suite.ErrorContains(err, "1 of 2 patterns are invalid")
		suite.Contains(out, "FAIL")
	})

	suite.Run("Requires Patterns", func() {
		_, err := suite.execute("check")
		suite.Error(err)
	})
}

func TestCommandTestSuite(t *testing.T) {
	suite.Run(t, new(CommandTestSuite))
}
