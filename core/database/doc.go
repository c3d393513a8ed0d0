// Package database opens the optional journal database through GORM.
//
// Two drivers are supported: sqlite (a local file, the default) and mysql for
// a shared journal. Connect pings the database before returning so that a
// misconfiguration is reported up front.
//
// # Usage
//
//	db, err := database.Connect(cfg.Journal)
//	if err != nil {
//	    log.Warn("Journal disabled", zap.Error(err))
//	}
package database
