package main

import (
	"log"
	"os"
	"strings"

	"github.gatech.edu/ECEInnovation/DLX-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/DLX-Assembler/languageServer"
	"github.gatech.edu/ECEInnovation/DLX-Assembler/util"
	"github.gatech.edu/ECEInnovation/DLX-Assembler/webservice"
)

func main() {
	if len(os.Args) >= 2 && os.Args[1] == "languageServer" {
		if len(os.Args) >= 3 && os.Args[2] == "debug" {
			util.LoggingEnabled = true
		}
		languageServer.ListenAndServe()
		return
	} else if len(os.Args) >= 2 && os.Args[1] == "serve" {
		webservice.RunAssemblyWebserver()
	} else if len(os.Args) == 3 && os.Args[1] == "assemble" {
		assembleFile(os.Args[2])
	} else if len(os.Args) == 1 {
		// run as language server but in tcp mode so it can be remotely debugged
		languageServer.ListenAndServeTCP()
	} else {
		log.Fatalln("Invalid arguments:", os.Args)
	}
}

// assembleFile reads a .dlx source file and writes the listing next to it
// with a .hex extension.
func assembleFile(filePath string) {
	if !strings.HasSuffix(filePath, ".dlx") {
		log.Fatalln("Please supply a valid .dlx file")
	}

	b, e := os.ReadFile(filePath)
	if e != nil {
		log.Fatalf("Could not read file %s: %v", filePath, e)
	}

	listing, e := assembler.Assemble(string(b))
	if e != nil {
		log.Fatalf("Could not assemble %s: %v", filePath, e)
	}

	outPath := strings.TrimSuffix(filePath, ".dlx") + ".hex"
	if e := os.WriteFile(outPath, []byte(listing), 0644); e != nil {
		log.Fatalf("Could not write file %s: %v", outPath, e)
	}
}
