package memory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/pkg/security"
)

// seed loads the fixed demo dataset: one tutor, one patient, two
// products, two unread notifications and the four demo accounts. It
// runs exactly once, from NewStore.
func (s *Store) seed() error {
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)

	demoAccounts := []struct {
		name  string
		email string
		role  string
	}{
		{"Ana Souza", "ana@patasfelizes.com", model.RoleReceptionist},
		{"Carlos Mendes", "carlos@patasfelizes.com", model.RoleVeterinarian},
		{"Maria Lima", "maria@patasfelizes.com", model.RoleAdmin},
		{"Pedro Santos", "pedro@patasfelizes.com", model.RoleStockkeeper},
	}
	for _, acc := range demoAccounts {
		hash, err := hasher.Hash("123456")
		if err != nil {
			return err
		}
		user := model.User{
			Name:         acc.name,
			Email:        acc.email,
			PasswordHash: hash,
			Role:         acc.role,
		}
		s.stamp(&user.Base)
		s.users = append(s.users, user)
	}

	tutor := model.Tutor{
		Name:  "João Silva",
		CPF:   "123.456.789-09",
		RG:    "12.345.678-9",
		Phone: "(11) 99999-9999",
		Email: "joao@email.com",
		Address: model.Address{
			Street:       "Rua das Flores",
			Number:       "123",
			Neighborhood: "Centro",
			City:         "São Paulo",
			State:        "SP",
			ZipCode:      "01234-567",
		},
	}
	s.stamp(&tutor.Base)
	s.tutors = append(s.tutors, tutor)

	patient := model.Patient{
		Name:      "Rex",
		TutorID:   tutor.ID,
		Species:   "dog",
		Breed:     "Golden Retriever",
		Gender:    model.GenderMale,
		BirthDate: time.Date(2020, 5, 15, 0, 0, 0, 0, time.UTC),
		Weight:    25.5,
		Color:     "golden",
		Allergies: []string{"chicken"},
	}
	s.stamp(&patient.Base)
	s.patients = append(s.patients, patient)

	products := []model.Product{
		{
			Name:           "Premium Dog Food",
			Description:    "Super premium food for adult dogs",
			Category:       "food",
			Supplier:       "PetFood Brasil",
			Stock:          50,
			MinStock:       10,
			CostPrice:      45.00,
			SellPrice:      65.00,
			ExpirationDate: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			Batch:          "LOT001",
		},
		{
			Name:           "Canine Dewormer",
			Description:    "Dewormer for medium sized dogs",
			Category:       "medication",
			Supplier:       "VetMed",
			Stock:          5,
			MinStock:       15,
			CostPrice:      18.00,
			SellPrice:      28.00,
			ExpirationDate: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			Batch:          "VM2024",
		},
	}
	for _, p := range products {
		s.stamp(&p.Base)
		s.products = append(s.products, p)
	}

	notifications := []model.Notification{
		{
			Type:    model.NotificationWarning,
			Title:   "Low stock",
			Message: "Canine Dewormer is below minimum stock (5 units)",
		},
		{
			Type:    model.NotificationInfo,
			Title:   "Appointment scheduled",
			Message: "New appointment scheduled for Rex at 14:00",
		},
	}
	for _, n := range notifications {
		s.stamp(&n.Base)
		s.notifications = append(s.notifications, n)
	}

	return nil
}
