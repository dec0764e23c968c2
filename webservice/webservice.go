package webservice

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.gatech.edu/ECEInnovation/DLX-Assembler/assembler"
)

// The assembler normally runs from the command line or behind the language
// server, but for quick experiments it is handy to paste a program into a
// browser. This hosts a web server on port 2040 that serves a small page
// and assembles programs sent over a websocket.

type assembleRequest struct {
	Type   string `json:"type"`
	Source string `json:"source"`
}

type listingMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type diagnosticsMessage struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Items   []assembler.Diagnostic `json:"items"`
}

func handleAssembleSocket(conn *websocket.Conn) {
	wsMutex := sync.Mutex{}

	reply := func(message interface{}) {
		messageBytes, e := json.Marshal(message)
		if e != nil {
			log.Printf("could not marshal reply: %v", e)
			return
		}
		wsMutex.Lock()
		conn.WriteMessage(websocket.TextMessage, messageBytes)
		wsMutex.Unlock()
	}

	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			log.Println("read:", err)
			break
		}

		request := assembleRequest{}
		if err := json.Unmarshal(messageBytes, &request); err != nil {
			log.Println("json:", err)
			break
		}

		switch request.Type {
		case "assemble":
			listing, err := assembler.Assemble(request.Source)
			if err != nil {
				reply(diagnosticsMessage{
					Type:    "diagnostics",
					Message: err.Error(),
					Items:   []assembler.Diagnostic{assembler.DiagnosticForError(err, request.Source)},
				})
				continue
			}
			reply(listingMessage{Type: "listing", Text: listing})
		default:
			log.Printf("unknown message type: %s", request.Type)
		}
	}
}

// RunAssemblyWebserver blocks serving the page and its websocket endpoint.
func RunAssemblyWebserver() {
	var upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	handler := func(w http.ResponseWriter, r *http.Request) {
		upgrader.CheckOrigin = func(r *http.Request) bool { return true }
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println(err)
			return
		}
		handleAssembleSocket(conn)
	}

	http.HandleFunc("/ws", handler)
	http.HandleFunc("/", handleGetPage)
	log.Println("Connect to the assembler at http://localhost:2040")
	http.ListenAndServe(":2040", nil)
}

func handleGetPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(htmlPage))
}

var htmlPage = `<html>
<head>
	<title>DLX Assembler</title>
</head>
<body style="background-color: #1E1E1E;">
	<h1 style="color: white; display: inline-block;">DLX Assembler</h1>
	<button id="assembleButton" style="margin-left: 50px; height: 40px; width: 110px;">ASSEMBLE</button>
	<br/>
	<textarea id="source" rows="20" style="width: 980px; padding: 10px; color: white; font-size: 1.2em; font-family: monospace; background-color: black; border: 2px solid white;" spellcheck="false">		; type a DLX program here
		addi r1, r0, 1</textarea>
	<h2 style="color: white;">Listing</h2>
	<div style="width: 980px; padding: 10px; color: white; font-size: 1.2em; font-family: monospace; background-color: black; height: 300px; overflow-y: 'auto'; border: 2px solid white; white-space: pre;" id="listing"></div>

	<script>
		// Connect to the websocket
		var socket = new WebSocket("ws://localhost:2040/ws");

		socket.onopen = function() {
			socket.onmessage = function(event) {
				var data = JSON.parse(event.data);
				if (data.type == "listing") {
					document.getElementById("listing").style.color = "white";
					document.getElementById("listing").textContent = data.text;
				} else if (data.type == "diagnostics") {
					var text = data.message;
					for (var i = 0; i < data.items.length; i++) {
						text += "\n  line " + (data.items[i].range.start.line + 1) + ": " + data.items[i].message;
					}
					document.getElementById("listing").style.color = "#FF6060";
					document.getElementById("listing").textContent = text;
				}
			};
		};

		// when the socket closes, try to reconnect every 3 seconds
		socket.onclose = function() {
			setTimeout(function() {
				socket = new WebSocket("ws://localhost:2040/ws");
			}, 3000);
		};

		document.getElementById("assembleButton").onclick = function() {
			socket.send(JSON.stringify({
				type: "assemble",
				source: document.getElementById("source").value
			}));
		};
	</script>
</body>
</html>`
