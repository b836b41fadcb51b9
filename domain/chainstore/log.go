package chainstore

import "github.com/kaspanet/minichain/infrastructure/logger"

var log = logger.RegisterSubSystem("CSTR")
