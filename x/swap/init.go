package swap

import (
	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/errors"
	"github.com/iov-one/swapchain/pda"
)

const optKey = "swap"

// Config is the genesis configuration of the swap extension.
type Config struct {
	ProgramID pda.ProgramID `json:"program_id"`
}

// ProgramFromGenesis reads the program id from the genesis options. The
// program id is mandatory.
func ProgramFromGenesis(opts swapchain.Options) (Program, error) {
	if len(opts[optKey]) == 0 {
		return Program{}, errors.Wrap(errors.ErrEmpty, "swap configuration missing")
	}
	var conf Config
	if err := opts.ReadOptions(optKey, &conf); err != nil {
		return Program{}, err
	}
	if conf.ProgramID == (pda.ProgramID{}) {
		return Program{}, errors.Wrap(errors.ErrEmpty, "program id")
	}
	return NewProgram(conf.ProgramID), nil
}
