package password

var DecoyHash = decoyHash
