package transport

import (
	"time"

	"github.com/dietcoach/backend/internal/models"
	"github.com/dietcoach/backend/internal/service"
)

type RegisterRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	MobileNumber string `json:"mobile_number"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileRequest struct {
	Username     *string `json:"username"`
	MobileNumber *string `json:"mobile_number"`
	Password     *string `json:"password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type UserUpdateRequest struct {
	Username     *string `json:"username"`
	MobileNumber *string `json:"mobile_number"`
	Password     *string `json:"password"`
	RoleID       *uint   `json:"role_id"`
}

type PlanUpdateRequest struct {
	Goal     *string              `json:"goal"`
	DietType *string              `json:"diet_type"`
	Duration *string              `json:"duration"`
	DietPlan *models.PlanDocument `json:"diet_plan"`
}

type ExerciseRequest struct {
	Weight          *float64 `json:"weight"`
	Height          *float64 `json:"height"`
	Goal            string   `json:"goal"`
	DifficultyLevel string   `json:"difficulty_level"`
	DurationWeeks   *int     `json:"duration_weeks"`
}

type ExerciseUpdateRequest struct {
	Goal            *string                  `json:"goal"`
	DifficultyLevel *string                  `json:"difficulty_level"`
	DurationWeeks   *int                     `json:"duration_weeks"`
	ExercisePlan    *models.ExerciseDocument `json:"exercise_plan"`
}

type WorkoutRequest struct {
	WorkoutName        *string `json:"workout_name"`
	WorkoutDescription *string `json:"workout_description"`
	Category           *string `json:"category"`
	DifficultyLevel    *string `json:"difficulty_level"`
	DurationMinutes    *int    `json:"duration_minutes"`
	CaloriesBurned     *int    `json:"calories_burned"`
	EquipmentNeeded    *string `json:"equipment_needed"`
	PhotoURL           *string `json:"photo_url"`
}

type YogaRequest struct {
	YogaName        *string `json:"yoga_name"`
	YogaDescription *string `json:"yoga_description"`
	DifficultyLevel *string `json:"difficulty_level"`
	DurationMinutes *int    `json:"duration_minutes"`
	Benefits        *string `json:"benefits"`
	PhotoURL        *string `json:"photo_url"`
}

type ChatRequest struct {
	Question  string `json:"question"`
	QueryType string `json:"query_type"`
}

type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type UserView struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	MobileNumber *string   `json:"mobile_number"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type AuthResponse struct {
	Message     string      `json:"message"`
	User        UserSummary `json:"user"`
	AccessToken string      `json:"access_token"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

type PlanView struct {
	ID        uint                `json:"id"`
	Goal      string              `json:"goal"`
	DietType  string              `json:"diet_type"`
	Duration  string              `json:"duration"`
	CreatedAt time.Time           `json:"created_at"`
	Plan      models.PlanDocument `json:"plan"`
}

type QueryView struct {
	ID        uint      `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	QueryType string    `json:"query_type"`
	CreatedAt time.Time `json:"created_at"`
}

type ExercisePlanView struct {
	ID              uint                    `json:"id"`
	Goal            string                  `json:"goal"`
	DifficultyLevel string                  `json:"difficulty_level"`
	DurationWeeks   int                     `json:"duration_weeks"`
	CreatedAt       time.Time               `json:"created_at"`
	Plan            models.ExerciseDocument `json:"plan"`
}

type WorkoutView struct {
	ID                 uint    `json:"id"`
	WorkoutName        string  `json:"workout_name"`
	WorkoutDescription string  `json:"workout_description"`
	Category           string  `json:"category"`
	DifficultyLevel    string  `json:"difficulty_level"`
	DurationMinutes    int     `json:"duration_minutes"`
	CaloriesBurned     int     `json:"calories_burned"`
	EquipmentNeeded    string  `json:"equipment_needed"`
	PhotoURL           *string `json:"photo_url"`
}

type YogaView struct {
	ID              uint    `json:"id"`
	YogaName        string  `json:"yoga_name"`
	YogaDescription string  `json:"yoga_description"`
	PhotoURL        *string `json:"photo_url"`
	DifficultyLevel string  `json:"difficulty_level"`
	DurationMinutes int     `json:"duration_minutes"`
	Benefits        string  `json:"benefits"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

func UserSummaryFrom(u *models.User) UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.RoleName()}
}

func UserViewFrom(u *models.User) UserView {
	return UserView{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		MobileNumber: u.MobileNumber,
		Role:         u.RoleName(),
		CreatedAt:    u.CreatedAt,
	}
}

func UserViews(users []models.User) []UserView {
	out := make([]UserView, len(users))
	for i := range users {
		out[i] = UserViewFrom(&users[i])
	}
	return out
}

func UserSummaries(users []models.User) []UserSummary {
	out := make([]UserSummary, len(users))
	for i := range users {
		out[i] = UserSummaryFrom(&users[i])
	}
	return out
}

func PlanViewFrom(p *models.DietPlan) PlanView {
	return PlanView{
		ID:        p.ID,
		Goal:      p.Goal,
		DietType:  p.DietType,
		Duration:  p.Duration,
		CreatedAt: p.CreatedAt,
		Plan:      p.Plan,
	}
}

func PlanViews(plans []models.DietPlan) []PlanView {
	out := make([]PlanView, len(plans))
	for i := range plans {
		out[i] = PlanViewFrom(&plans[i])
	}
	return out
}

func QueryViewFrom(q *models.ChatbotQuery) QueryView {
	return QueryView{
		ID:        q.ID,
		Question:  q.Question,
		Answer:    q.Answer,
		QueryType: q.QueryType,
		CreatedAt: q.CreatedAt,
	}
}

func QueryViews(qs []models.ChatbotQuery) []QueryView {
	out := make([]QueryView, len(qs))
	for i := range qs {
		out[i] = QueryViewFrom(&qs[i])
	}
	return out
}

func ExercisePlanViewFrom(p *models.ExercisePlan) ExercisePlanView {
	return ExercisePlanView{
		ID:              p.ID,
		Goal:            p.Goal,
		DifficultyLevel: p.DifficultyLevel,
		DurationWeeks:   p.DurationWeeks,
		CreatedAt:       p.CreatedAt,
		Plan:            p.Plan,
	}
}

func ExercisePlanViews(plans []models.ExercisePlan) []ExercisePlanView {
	out := make([]ExercisePlanView, len(plans))
	for i := range plans {
		out[i] = ExercisePlanViewFrom(&plans[i])
	}
	return out
}

func WorkoutViewFrom(w *models.Workout) WorkoutView {
	return WorkoutView{
		ID:                 w.ID,
		WorkoutName:        w.WorkoutName,
		WorkoutDescription: w.Description,
		Category:           w.Category,
		DifficultyLevel:    w.DifficultyLevel,
		DurationMinutes:    w.DurationMinutes,
		CaloriesBurned:     w.CaloriesBurned,
		EquipmentNeeded:    w.EquipmentNeeded,
		PhotoURL:           w.PhotoURL,
	}
}

func WorkoutViews(ws []models.Workout) []WorkoutView {
	out := make([]WorkoutView, len(ws))
	for i := range ws {
		out[i] = WorkoutViewFrom(&ws[i])
	}
	return out
}

func YogaViewFrom(y *models.Yoga) YogaView {
	return YogaView{
		ID:              y.ID,
		YogaName:        y.YogaName,
		YogaDescription: y.Description,
		PhotoURL:        y.PhotoURL,
		DifficultyLevel: y.DifficultyLevel,
		DurationMinutes: y.DurationMinutes,
		Benefits:        y.Benefits,
	}
}

func YogaViews(ys []models.Yoga) []YogaView {
	out := make([]YogaView, len(ys))
	for i := range ys {
		out[i] = YogaViewFrom(&ys[i])
	}
	return out
}

// Page renders the list envelope shared by paginated endpoints.
func Page[T, V any](key string, p *service.Paged[T], conv func([]T) []V) map[string]any {
	return map[string]any{
		key:        conv(p.Items),
		"total":    p.Total,
		"page":     p.Page,
		"per_page": p.PerPage,
		"pages":    p.Pages,
	}
}
