package packagemanager

const CurlPackage = "curl"
const TarPackage = "tar"
const NodeJSPackage = "nodejs"
const NPMPackage = "npm"
const MariaDBServerPackage = "mariadb-server"
const PostgreSQLDebianPackage = "postgresql"
const PostgreSQLRHELPackage = "postgresql-server"
const RedisDebianPackage = "redis-server"
const RedisRHELPackage = "redis"
const DockerDebianPackage = "docker.io"
const DockerRHELPackage = "docker"

const DistributionDebian = "debian"
const DistributionUbuntu = "ubuntu"
const DistributionRaspbian = "raspbian"
const DistributionCentOS = "centos"
const DistributionAlmaLinux = "almalinux"
const DistributionRockyLinux = "rocky"
const DistributionFedora = "fedora"
const DistributionAmazon = "amzn"
