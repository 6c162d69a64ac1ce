package app

import (
	"github.com/crouilla/phaserunner/internal/registry"
	"github.com/crouilla/phaserunner/modules/env_vars"
	"github.com/crouilla/phaserunner/modules/http_request"
	"github.com/crouilla/phaserunner/modules/print"
)

// coreModules are the built-in phase handler modules registered when the
// caller does not inject its own set.
var coreModules = []registry.Module{
	&print.Module{},
	&env_vars.Module{},
	&http_request.Module{},
}
