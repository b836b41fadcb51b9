package signal

import "github.com/kaspanet/minichain/infrastructure/logger"

var log = logger.RegisterSubSystem("SGNL")
