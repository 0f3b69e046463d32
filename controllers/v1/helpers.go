package apiv1

import "expense-claims-front/models"

func getUser(sess *models.Session) *models.User {
	if sess == nil {
		return nil
	}
	sess.Lock()
	defer sess.Unlock()
	return sess.User
}
