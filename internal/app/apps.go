package app

import (
	"github.com/vk/bootstrapgo/apps/hello"
	"github.com/vk/bootstrapgo/internal/entrypoint"
)

// coreApps lists the entry points compiled into the default launcher
// binary.
var coreApps = []func(*entrypoint.Table){
	hello.Register,
}

// DefaultTable builds the entry point table of the default launcher binary.
func DefaultTable() *entrypoint.Table {
	table := entrypoint.NewTable()
	for _, register := range coreApps {
		register(table)
	}
	return table
}
