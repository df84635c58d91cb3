package modules

import (
	"github.com/iota-uz/sitecms/modules/core"
	"github.com/iota-uz/sitecms/modules/website"
	"github.com/iota-uz/sitecms/pkg/application"
)

// BuiltInModules returns fresh instances of every module the server runs.
func BuiltInModules() []application.Module {
	return []application.Module{
		core.NewModule(nil),
		website.NewModule(nil),
	}
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range append(BuiltInModules(), externalModules...) {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
