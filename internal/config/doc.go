// Package config loads runtime configuration for the loginsystem CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional YAML file selected with -c or -config.
//  3. Environment variables prefixed with LOGINSYSTEM_; a double underscore
//     separates nesting levels (LOGINSYSTEM_BACKUP__S3__BUCKET).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-c string   path to YAML config file
//	-u string   users file
//	-d string   denylist file
//	-a string   hash algorithm (sha256, argon2id, bcrypt)
//	-l string   log level (debug, info, warn, error)
//	-s          require strong passwords
//
// # YAML schema
//
//	users_file: users.txt
//	denylist_file: dictbadpass.txt
//	delimiter: ";"
//	hash_algorithm: sha256
//	bcrypt_cost: 10
//	require_strong_password: false
//	log:
//	  level: info
//	  format: text   # text, json or zap
//	backup:
//	  dir: /var/backups/loginsystem
//	  s3:
//	    bucket: users-backup
//	    region: us-east-1
//	    base_endpoint: http://127.0.0.1:9000
//	    access_key: minio
//	    secret_key: minio123
//	    prefix: prod/
//
// The loaded Config is validated with go-playground/validator struct tags.
package config
