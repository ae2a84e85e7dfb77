package main

import "producthunt/ingest-service/cmd"

func main() {
	cmd.Execute()
}
