package cli

const asciiLogo = `
  _ __ ___  ___(_)
 | '_ ` + "`" + ` _ \/ __| |
 | | | | | \__ \ |
 |_| |_| |_|___/_|`
