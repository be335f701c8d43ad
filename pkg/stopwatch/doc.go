/*
Package stopwatch measures elapsed time from a single start instant.

A Timer is started once and then sampled with Lap. Every lap is the time
elapsed since Start, so successive laps never decrease:

	sw := stopwatch.New()
	if err := sw.Start(); err != nil {
		return err
	}
	doWork()
	d, err := sw.Lap()

HumanDuration renders a duration in a compact form such as "13us" or "2s".
*/
package stopwatch
