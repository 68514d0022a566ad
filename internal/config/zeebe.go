package config

import (
	zcfg "github.com/agrawald/kafka-connect-zeebe/source/zeebe"
)

// LoadZeebeConfig delegates to the Zeebe source loader while centralizing
// loader entrypoints under internal/config.
func LoadZeebeConfig(path string) (zcfg.Config, error) {
	return zcfg.LoadConfig(path)
}
