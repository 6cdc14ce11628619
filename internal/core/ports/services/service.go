package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Item      ItemSvcFacade
	Request   RequestSvcFacade
	Approval  ApprovalSvcFacade
	Quota     QuotaSvcFacade
	Directory DirectorySvcFacade
	Auth      AuthSvcFacade
	Journal   JournalSvcFacade
	Events    EventBus
}
