package main

import "github.com/ordane/paygate/app"

func main() {
	app.Run()
}
