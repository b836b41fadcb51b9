package ldb

import "github.com/kaspanet/minichain/infrastructure/logger"

var log = logger.RegisterSubSystem("LVDB")
