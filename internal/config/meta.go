package config

import (
	"reflect"
	"strings"
)

// GetConfigExample uses reflection to generate an example config.
// It stays in sync when new fields are added to Config.
func GetConfigExample() map[string]any {
	t := reflect.TypeOf(Config{})
	example := make(map[string]any)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" {
			continue
		}

		// Extract the JSON field name (before comma)
		jsonName := strings.Split(jsonTag, ",")[0]
		example[jsonName] = generateExampleValue(field.Type, jsonName)
	}

	return example
}

// generateExampleValue creates example values based on type and field name
func generateExampleValue(t reflect.Type, fieldName string) any {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Bool:
		return fieldName == "debug"
	case reflect.Int, reflect.Int64:
		switch fieldName {
		case "max_log_files":
			return DefaultMaxLogFiles
		case "telegram_chat_id":
			return 123456789
		}
		return 10
	case reflect.String:
		switch fieldName {
		case "daily_reminder":
			return "20:00"
		case "database_url":
			return "~/.studycal/studycal.db"
		case "notifier":
			return NotifierDesktop
		case "telegram_token":
			return "123456:ABC-DEF"
		default:
			return "example"
		}
	}

	return nil
}
