package notifier

import "github.com/kestfor/FiveWordCliques/internal/services/finder"

type Notifier interface {
	Notify(result *finder.Result) error
}
