package main

import "chorequest/internal/app"

// @title           ChoreQuest API
// @version         1.0
// @description     Gamified household chore tracker: recurring chores, experience, levels, area health and tool durability.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT token.
func main() {
	app.Run()
}
