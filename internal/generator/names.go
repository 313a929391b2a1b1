package generator

// Name pools for synthetic customers. Pools are fixed so a given seed maps
// to the same identities forever; changing them is a dataset-breaking change.

var firstNames = []string{
	"Alice", "Ben", "Carla", "Diego", "Elena", "Felix",
	"Grace", "Hassan", "Ingrid", "Jonas", "Kira", "Liam",
	"Maya", "Noah", "Olivia", "Pablo", "Quinn", "Rosa",
	"Sofia", "Tomas", "Uma", "Victor", "Wendy", "Yusuf",
}

var lastNames = []string{
	"Almeida", "Becker", "Chen", "Dubois", "Eriksson", "Fischer",
	"Garcia", "Haddad", "Ivanova", "Jensen", "Kowalski", "Lindgren",
	"Moreau", "Nakamura", "Okafor", "Petrov", "Quintana", "Rossi",
	"Santos", "Tanaka", "Ueda", "Vargas", "Weber", "Yilmaz",
}

var emailDomains = []string{
	"example.com", "mailbox.org", "postal.net", "inbox.io",
}
