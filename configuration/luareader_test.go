// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/mintauth/configuration"
	"github.com/bitmark-inc/mintauth/fault"
)

type sample struct {
	DataDirectory string            `gluamapper:"data_directory"`
	Name          string            `gluamapper:"name"`
	Count         int               `gluamapper:"count"`
	Enabled       bool              `gluamapper:"enabled"`
	Price         string            `gluamapper:"price"`
	Listen        []string          `gluamapper:"listen"`
	Levels        map[string]string `gluamapper:"levels"`
	FromVariable  string            `gluamapper:"from_variable"`
	Untouched     string            `gluamapper:"untouched"`
}

func TestParseConfigurationFile(t *testing.T) {
	s := &sample{
		Untouched: "default",
	}
	variables := map[string]string{
		"extra": "from go",
	}

	err := configuration.ParseConfigurationFile("testdata/test.conf", s, variables)
	assert.Nil(t, err, "parse error")

	expected := &sample{
		DataDirectory: ".",
		Name:          "sample",
		Count:         42,
		Enabled:       true,
		Price:         "1.5",
		Listen:        []string{"127.0.0.1:8443", "[::1]:8443"},
		Levels: map[string]string{
			"DEFAULT": "info",
			"ledger":  "debug",
		},
		FromVariable: "from go",
		Untouched:    "default",
	}
	assert.Equal(t, expected, s, "wrong configuration")
}

func TestParseConfigurationFileErrors(t *testing.T) {
	s := sample{}
	err := configuration.ParseConfigurationFile("testdata/test.conf", s, nil)
	assert.Equal(t, fault.InvalidStructPointer, err, "non pointer accepted")

	err = configuration.ParseConfigurationFile("testdata/invalid.conf", &s, nil)
	assert.Equal(t, fault.MissingParameters, err, "script without table accepted")

	err = configuration.ParseConfigurationFile("testdata/missing.conf", &s, nil)
	assert.NotNil(t, err, "missing file accepted")
}
