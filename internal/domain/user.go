package domain

import "time"

type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	LoginMethod  string    `json:"login_method" db:"login_method"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type Profile struct {
	ID         int       `json:"id" db:"id"`
	UserID     int       `json:"user_id" db:"user_id"`
	Phone      string    `json:"phone" db:"phone"`
	Location   string    `json:"location" db:"location"`
	Title      string    `json:"title" db:"title"`
	Experience string    `json:"experience" db:"experience"`
	ImageURL   string    `json:"profile_image" db:"profile_image"`
	Level      int       `json:"level" db:"level"`
	XP         int       `json:"xp" db:"xp"`
	Inventory  []string  `json:"inventory" db:"inventory"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// NextLevelXP returns the xp needed to reach the next level.
func (p *Profile) NextLevelXP() int {
	return p.Level * 100
}

// AddXP adds xp and applies level-ups. Returns true if at least one
// level was gained.
func (p *Profile) AddXP(amount int) bool {
	p.XP += amount
	leveledUp := false
	for p.XP >= p.NextLevelXP() {
		p.XP -= p.NextLevelXP()
		p.Level++
		leveledUp = true
	}
	return leveledUp
}
