package services

import (
	"fmt"

	"mysite/app/mailer"
	"mysite/app/models"
)

// ShareService emails a post recommendation to a friend.
type ShareService struct {
	mailer mailer.Mailer
	from   string
}

func NewShareService(m mailer.Mailer, from string) *ShareService {
	return &ShareService{mailer: m, from: from}
}

// ShareMessage builds the recommendation email for post.
func ShareMessage(post *models.Post, form models.EmailPostForm, postURL, from string) mailer.Message {
	return mailer.Message{
		From:    from,
		To:      []string{form.To},
		Subject: fmt.Sprintf("%s recommends you read %s", form.Name, post.Title),
		Body:    fmt.Sprintf("Read %s at %s\n\n%s's comments: %s", post.Title, postURL, form.Name, form.Comments),
	}
}

// Share validates form and sends exactly one email. postURL must be absolute.
// Nothing is sent when the form has errors.
func (s *ShareService) Share(post *models.Post, form models.EmailPostForm, postURL string) (models.FormErrors, error) {
	if errs := form.Validate(); errs != nil {
		return errs, nil
	}
	if err := s.mailer.Send(ShareMessage(post, form, postURL, s.from)); err != nil {
		return nil, fmt.Errorf("failed to send email: %w", err)
	}
	return nil, nil
}
