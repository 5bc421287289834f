// Package cleanup reaps identity accounts that stayed unverified past the
// 24-hour grace period, together with their profile rows.
//
// A run has two phases. SCAN lists every account from the identity
// provider, walking pages until the listing is exhausted; a listing
// failure aborts the run. REAP then deletes each selected pair
// sequentially, profile row before identity account (the profile has a
// foreign-key dependency on the account id). One record's failure is
// logged and skipped; the rest of the run proceeds.
//
//	service := cleanup.NewCleanupService(provider, profileRepo)
//	result := service.Run(ctx)
//
// For recurring execution wrap the service in a Scheduler:
//
//	scheduler := cleanup.NewScheduler(service, cleanup.WithInterval(24*time.Hour))
//	go scheduler.Start(ctx)
package cleanup
