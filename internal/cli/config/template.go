package config

const contextTemplateYAML = `# Context catalog template for bitgo.
# Fill the fields you need and remove examples/comments as desired.
contexts:
  - name: test
    # Access token. Prefer BITGO_TOKEN over storing it here.
    token: change-me

    # API host without scheme. Defaults to test.bitgo.com.
    # host: app.bitgo.com

    # Plain HTTP for a local express instance.
    # host: localhost:3080
    # secure: false

    # Default coin for wallet, tx, address and key commands.
    coin: tbtc

    # Headers sent with every request.
    # default-headers:
    #   X-Team: treasury

    # TLS material for hosts behind a private CA or requiring client certs.
    # tls:
    #   ca-cert-file: /path/to/ca.pem
    #   client-cert-file: /path/to/client.pem
    #   client-key-file: /path/to/client-key.pem
    #   insecure-skip-verify: false

current-ctx: test
`
