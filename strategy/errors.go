package strategy

import "errors"

// ErrNoWorkers indicates that no workers were provided for assignment.
var ErrNoWorkers = errors.New("no workers available for assignment")

// ErrUnknownStrategy indicates a strategy name that ByName does not know.
var ErrUnknownStrategy = errors.New("unknown assignment strategy")
