package seeds

import (
	"gorm.io/gorm"

	academy "akademiku_backend/internals/seeds/academy"
	users "akademiku_backend/internals/seeds/users"
)

// RunAllSeeds loads the bundled fixtures. Every seeder is idempotent,
// so running on a populated database is safe.
func RunAllSeeds(db *gorm.DB) {
	users.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")
	academy.SeedStudentsFromJSON(db, "internals/seeds/academy/data_students.json")
}
