package main

import "context"

// startProximityNotifier runs the nearby-attraction sweep loop until the
// context is cancelled.
func (app *application) startProximityNotifier(ctx context.Context) {
	go app.notifier.Run(ctx, app.config.proximity.sweepInterval)
}
