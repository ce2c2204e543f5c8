package main

import (
	"github.com/reusee/beat/beatconfigs"
	"github.com/reusee/beat/beathost"
	"github.com/reusee/beat/debugs"
	"github.com/reusee/beat/presets"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs beatconfigs.Module
	Host    beathost.Module
	Debugs  debugs.Module
	Presets presets.Module
}
