package main

import (
	"github.com/JailtonJunior94/aop-logging/internal/app"
	"go.uber.org/fx"
)

func main() {
	fx.New(app.Options()).Run()
}
