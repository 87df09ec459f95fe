package models

import (
	"time"
)

const (
	RoleUser    = "user"
	RoleAdmin   = "admin"
	RoleTrainer = "trainer"
)

type Role struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"        json:"id"`
	RoleName    string `gorm:"size:50;uniqueIndex;not null"    json:"role_name"`
	Description string `gorm:"size:255"                        json:"description"`
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"     json:"id"`
	Username     string    `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null"            json:"-"`
	MobileNumber *string   `gorm:"size:20"                      json:"mobile_number"`
	RoleID       uint      `gorm:"not null;index"               json:"role_id"`
	Role         Role      `gorm:"foreignKey:RoleID"            json:"-"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime"      json:"created_at"`
}

// RoleName is empty when the Role association was not loaded.
func (u *User) RoleName() string {
	return u.Role.RoleName
}

func (u *User) IsAdmin() bool {
	return u.Role.RoleName == RoleAdmin
}

// PlanDocument is the stored body of a diet plan.
type PlanDocument struct {
	UserInfo    map[string]any `json:"user_info,omitempty"`
	MealPlan    string         `json:"meal_plan"`
	GeneratedBy string         `json:"generated_by,omitempty"`
}

type DietPlan struct {
	ID        uint         `gorm:"primaryKey;autoIncrement"   json:"id"`
	UserID    uint         `gorm:"not null;index"             json:"user_id"`
	Plan      PlanDocument `gorm:"column:diet_plan;serializer:json;not null" json:"plan"`
	Goal      string       `gorm:"size:50"                    json:"goal"`
	DietType  string       `gorm:"size:50"                    json:"diet_type"`
	Duration  string       `gorm:"size:50"                    json:"duration"`
	CreatedAt time.Time    `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

type ChatbotQuery struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"   json:"id"`
	UserID    uint      `gorm:"not null;index"             json:"user_id"`
	Question  string    `gorm:"type:text;not null"         json:"question"`
	Answer    string    `gorm:"type:text"                  json:"answer"`
	QueryType string    `gorm:"size:50;index"              json:"query_type"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// ValidDifficulty reports whether level is one of the known difficulty levels.
func ValidDifficulty(level string) bool {
	switch level {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

type ExerciseItem struct {
	Name     string `json:"name"`
	Reps     string `json:"reps,omitempty"`
	Duration string `json:"duration,omitempty"`
	Sets     int    `json:"sets"`
}

// ExerciseDocument is the stored body of an exercise plan.
type ExerciseDocument struct {
	Goal           string         `json:"goal"`
	Difficulty     string         `json:"difficulty"`
	BMI            float64        `json:"bmi"`
	WeeklySchedule []ExerciseItem `json:"weekly_schedule"`
}

type ExercisePlan struct {
	ID              uint             `gorm:"primaryKey;autoIncrement"   json:"id"`
	UserID          uint             `gorm:"not null;index"             json:"user_id"`
	Plan            ExerciseDocument `gorm:"column:exercise_plan;serializer:json;not null" json:"plan"`
	Goal            string           `gorm:"size:50"                    json:"goal"`
	DifficultyLevel string           `gorm:"size:20"                    json:"difficulty_level"`
	DurationWeeks   int              `json:"duration_weeks"`
	CreatedAt       time.Time        `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

type Workout struct {
	ID              uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	WorkoutName     string  `gorm:"size:100;not null"        json:"workout_name"`
	Description     string  `gorm:"column:workout_description;type:text" json:"workout_description"`
	Category        string  `gorm:"size:50;index"            json:"category"`
	DifficultyLevel string  `gorm:"size:20;index"            json:"difficulty_level"`
	DurationMinutes int     `json:"duration_minutes"`
	CaloriesBurned  int     `json:"calories_burned"`
	EquipmentNeeded string  `gorm:"type:text"                json:"equipment_needed"`
	PhotoURL        *string `gorm:"size:500"                 json:"photo_url"`
}

type Yoga struct {
	ID              uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	YogaName        string  `gorm:"size:100;not null"        json:"yoga_name"`
	Description     string  `gorm:"column:yoga_description;type:text" json:"yoga_description"`
	PhotoURL        *string `gorm:"size:500;uniqueIndex"     json:"photo_url"`
	DifficultyLevel string  `gorm:"size:20;index"            json:"difficulty_level"`
	DurationMinutes int     `json:"duration_minutes"`
	Benefits        string  `gorm:"type:text"                json:"benefits"`
}

func (Yoga) TableName() string { return "yoga" }

// All lists every model in migration order.
func All() []any {
	return []any{&Role{}, &User{}, &DietPlan{}, &ChatbotQuery{}, &ExercisePlan{}, &Workout{}, &Yoga{}}
}
