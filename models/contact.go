package models

import (
	"context"
	"strings"
)

// Contact is a message left through the contact form
type Contact struct {
	Model
	Name    string `gorm:"type:varchar(200);not null" json:"name"`
	Email   string `gorm:"type:varchar(200);not null" json:"email"`
	Phone   string `gorm:"type:varchar(50);not null" json:"phone"`
	Message string `gorm:"type:text" json:"message"`
}

type ContactInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,max=50"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (in *ContactInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Message = strings.TrimSpace(in.Message)
}

func (c *Contact) input() ContactInput {
	return ContactInput{Name: c.Name, Email: c.Email, Phone: c.Phone, Message: c.Message}
}

func (c *Contact) apply(in ContactInput) {
	c.Name = in.Name
	c.Email = in.Email
	c.Phone = in.Phone
	c.Message = in.Message
}

func (c *Contact) columns() []string {
	return []string{"Name", "Email", "Phone", "Message"}
}

func ContactCreate(ctx context.Context, in ContactInput) (Contact, error) {
	return create[Contact](ctx, in, "")
}

func ContactList(ctx context.Context) ([]Contact, error) {
	return find[Contact](ctx, newestFirst)
}

func ContactByID(ctx context.Context, id uint64) (Contact, error) {
	return byID[Contact](ctx, id)
}

// ContactUpdate keeps the stored value of every field the patch leaves empty
func ContactUpdate(ctx context.Context, id uint64, patch func(*ContactInput) error) (Contact, error) {
	return update[Contact](ctx, id, func(in *ContactInput) error {
		old := *in
		if err := patch(in); err != nil {
			return err
		}
		for _, f := range []struct{ value, old *string }{
			{&in.Name, &old.Name}, {&in.Email, &old.Email}, {&in.Phone, &old.Phone}, {&in.Message, &old.Message},
		} {
			if strings.TrimSpace(*f.value) == "" {
				*f.value = *f.old
			}
		}
		return nil
	}, "")
}

func ContactDelete(ctx context.Context, id uint64) error {
	return remove[Contact](ctx, id)
}
