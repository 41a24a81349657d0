package apierrors

const (
	MsgFailListTask       = "errorListTask"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgTaskNotFound       = "taskNotFound"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgTaskDeleted        = "taskDeleted"
	MsgEmptyTitle         = "emptyTitle"
	MsgReminderAfterDue   = "reminderAfterDue"
	MsgReminderInPast     = "reminderInPast"

	MsgMissingIdentity    = "missingIdentity"
	MsgUnknownUser        = "unknownUser"
	MsgFailResolveUser    = "failResolveUser"
	MsgInvalidAuthPayload = "invalidAuthPayload"
	MsgEmailTaken         = "emailTaken"
	MsgUsernameTaken      = "usernameTaken"
	MsgInvalidCredentials = "invalidCredentials"
	MsgFailRegister       = "failRegister"
	MsgFailLogin          = "failLogin"
	MsgUserRegistered     = "userRegistered"
)
