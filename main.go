package main

import (
	"github.com/DeviAI-OpenSource/asymmetric-cryptography-data-exchange-utils/cmd"
)

func main() {
	cmd.Execute()
}
