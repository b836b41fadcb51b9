package app

import (
	"github.com/kaspanet/minichain/infrastructure/logger"
	"github.com/kaspanet/minichain/util/panics"
)

var log = logger.RegisterSubSystem("MCHN")
var spawn = panics.GoroutineWrapperFunc(log)
