package models

// Catalogs offered by the browser client. Validation only enforces them in strict mode.
var (
	Platforms = []string{"Web", "Mobile", "Desktop", "API"}
	Modules   = []string{"Authentication", "Dashboard", "Reports", "Settings", "Notifications", "User Management"}
)

func IsKnownPlatform(p string) bool {
	return contains(Platforms, p)
}

func IsKnownModule(m string) bool {
	return contains(Modules, m)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
