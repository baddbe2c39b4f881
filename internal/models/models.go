package models

// All returns every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&Course{},
		&Account{},
		&Student{},
		&Material{},
		&Notice{},
		&Grade{},
		&ScheduledMessage{},
		&ActivityLog{},
		&ContactSubmission{},
	}
}
