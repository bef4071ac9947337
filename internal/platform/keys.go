package platform

const (
	TenantID       = "enrole.defaulttenant.id"
	LDAPServerRoot = "enrole.ldapserver.root"

	TrustStore         = "javax.net.ssl.trustStore"
	TrustStorePassword = "javax.net.ssl.trustStorePassword"
	TrustStoreType     = "javax.net.ssl.trustStoreType"
	SSLConfigURL       = "com.ibm.SSL.ConfigURL"

	// DefaultOrgID The rest of the DN must be appended
	DefaultOrgID = "erglobalid=00000000000000000000"

	LoginContextName = "ITIM"
	ItimHome         = "itim.home"
)

const (
	propContextFactory = "apps.context.factory"
	propServerURL      = "enrole.appServer.url"
	propEJBUser        = "enrole.appServer.ejbuser.principal"
	propEJBPassword    = "enrole.appServer.ejbuser.credentials"
	propEncrypted      = "enrole.password.appServer.encrypted"
	propKeystore       = "enrole.encryption.keystore"
	propKeystorePass   = "enrole.encryption.password"
	propItimUser       = "itim.user"
	propItimPassword   = "itim.pswd"

	defaultTrustStoreType = "JCEKS"
	keystoreDir           = "/data/keystore/"
	sslClientProps        = "/extensions/5.1/examples/apps/bin/ssl.client.props"
)
