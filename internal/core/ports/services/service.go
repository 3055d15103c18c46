package services

// ServiceContainer holds all service facades, wired once at startup and
// handed to the handlers and the job scheduler.
type ServiceContainer struct {
	Ledger        LedgerSvcFacade
	Completion    CompletionSvcFacade
	Streak        StreakSvcFacade
	Recalculation RecalculationSvcFacade
	Task          TaskSvcFacade
	Routine       RoutineSvcFacade
	User          UserSvcFacade
	Auth          AuthSvcFacade
	Notifier      NotificationSink
}
