package finder

import "errors"

var ErrInvalidConfig = errors.New("invalid config")
var ErrUnreadableInput = errors.New("unreadable word list")
var ErrWorkerFailed = errors.New("search worker failed")
var ErrRunNotFound = errors.New("run not found")
var ErrRunNotReady = errors.New("run not ready")
var ErrTooManyRuns = errors.New("too many active runs")
