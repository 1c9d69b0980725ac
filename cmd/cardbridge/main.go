// Command cardbridge serves the session delegate bridge over stdio.
package main

import (
	"log"
	"os"

	"github.com/viant/cardbridge/bridge"
	_ "github.com/viant/scy/kms/blowfish"
)

func main() {
	if err := bridge.Run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
